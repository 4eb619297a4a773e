package main

import (
	"fmt"

	"github.com/stemnote/vocal-extract-be/src/server/api_token"
)

// prints a fresh API token to stdout, for provisioning API_TOKEN
func main() {
	token, err := api_token.GenerateToken()
	if err != nil {
		panic(err)
	}

	fmt.Println(token)
}
