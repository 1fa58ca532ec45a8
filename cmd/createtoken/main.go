package main

import (
	"fmt"
	"log"
	"os"

	"guardlink.com.au/guardlink/security"
)

func main() {
	secret := os.Getenv("GUARDLINK_SIGNING_SECRET")
	if secret == "" {
		log.Fatal("GUARDLINK_SIGNING_SECRET not set")
	}

	token, err := security.CreateIdentityToken(&security.GuardlinkIdentity{
		Id:       1,
		UserName: "device",
		Provider: "local",
	}, secret, 24*3600)
	if err != nil {
		log.Fatalf("failed to create token: %v", err)
	}

	fmt.Println(token)
}
