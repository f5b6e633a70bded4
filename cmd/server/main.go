package main

import (
	"log"

	transport "github.com/LianaVolkova/yatube/internal/transport/http"
)

func main() {
	if err := transport.Run(); err != nil {
		log.Fatalf("[Server] Fatal: %v", err)
	}
}
