package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"shuttle_booking_backend/internal/services"
)

func main() {
	password := flag.String("password", "", "Password to hash (read from stdin when empty)")
	flag.Parse()

	pw := *password
	if pw == "" {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintf(os.Stderr, "failed to read password: %v\n", err)
			os.Exit(1)
		}
		pw = strings.TrimRight(line, "\r\n")
	}
	if pw == "" {
		fmt.Fprintln(os.Stderr, "password must not be empty")
		os.Exit(2)
	}

	hash, err := services.HashPassword(pw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
