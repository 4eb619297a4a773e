package api_token_test

import (
	"github.com/cockroachdb/errors/markers"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stemnote/vocal-extract-be/src/server/api_token"
)

var _ = Describe("StaticValidator", func() {
	var validator api_token.StaticValidator

	BeforeEach(func() {
		validator = api_token.StaticValidator{Token: "sekrit-token"}
	})

	Describe("Valid header", func() {
		It("accepts the configured token", func() {
			err := validator.ValidateHeader("Bearer sekrit-token")
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Wrong token", func() {
		It("rejects with an invalid token mark", func() {
			err := validator.ValidateHeader("Bearer not-the-token")
			Expect(err).To(HaveOccurred())
			Expect(markers.Is(err, api_token.InvalidTokenMark)).To(BeTrue())
		})

		It("rejects a token that prefixes the real one", func() {
			err := validator.ValidateHeader("Bearer sekrit")
			Expect(err).To(HaveOccurred())
			Expect(markers.Is(err, api_token.InvalidTokenMark)).To(BeTrue())
		})
	})

	Describe("Malformed header", func() {
		It("rejects a header without the bearer prefix", func() {
			err := validator.ValidateHeader("Basic c2Vrcml0")
			Expect(err).To(HaveOccurred())
			Expect(markers.Is(err, api_token.BadHeaderMark)).To(BeTrue())
		})

		It("rejects an empty header", func() {
			err := validator.ValidateHeader("")
			Expect(err).To(HaveOccurred())
			Expect(markers.Is(err, api_token.BadHeaderMark)).To(BeTrue())
		})

		It("rejects a bearer header with no token", func() {
			err := validator.ValidateHeader("Bearer ")
			Expect(err).To(HaveOccurred())
			Expect(markers.Is(err, api_token.BadHeaderMark)).To(BeTrue())
		})
	})
})

var _ = Describe("GenerateToken", func() {
	It("produces distinct tokens that validate against themselves", func() {
		token1, err := api_token.GenerateToken()
		Expect(err).NotTo(HaveOccurred())
		Expect(token1).NotTo(BeEmpty())

		token2, err := api_token.GenerateToken()
		Expect(err).NotTo(HaveOccurred())

		Expect(token1).NotTo(Equal(token2))

		validator := api_token.StaticValidator{Token: token1}
		Expect(validator.ValidateHeader("Bearer " + token1)).To(Succeed())
	})
})
