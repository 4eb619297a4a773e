package testing

import "os"

// TestAPIToken is the shared token that test gateways are wired with
const TestAPIToken = "test-api-token-123"

func SetTestEnv() {
	if err := os.Setenv("ENVIRONMENT", "test"); err != nil {
		panic(err)
	}
}
