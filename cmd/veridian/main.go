package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/veridian-dev/veridian/pkg/sdk"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	client, err := sdk.New()
	if err != nil {
		log.Fatalf("Failed to initialize client: %v", err)
	}
	defer client.Close()

	command := strings.ToUpper(os.Args[1])
	args := os.Args[2:]

	switch command {
	case "EMAIL":
		if len(args) < 1 {
			log.Fatal("Usage: veridian EMAIL <address>")
		}
		valid, err := client.ValidateEmail(args[0])
		if err != nil {
			log.Fatal(err)
		}
		printJSON(map[string]any{"email": args[0], "valid": valid})

	case "PASSWORD":
		if len(args) < 1 {
			log.Fatal("Usage: veridian PASSWORD <candidate>")
		}
		assessment, err := client.AssessPassword(strings.Join(args, " "))
		if err != nil {
			log.Fatal(err)
		}
		printJSON(assessment)

	case "NORMALIZE":
		if len(args) < 1 {
			log.Fatal("Usage: veridian NORMALIZE <json-array>")
		}
		var items []any
		if err := json.Unmarshal([]byte(args[0]), &items); err != nil {
			log.Fatalf("Argument must be a JSON array: %v", err)
		}
		records, err := client.NormalizeRecords(items)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(records)

	case "REGISTER":
		if len(args) < 3 {
			log.Fatal("Usage: veridian REGISTER <name> <email> <age>")
		}
		age, err := strconv.Atoi(args[2])
		if err != nil {
			log.Fatalf("Age must be an integer: %v", err)
		}
		user, err := client.Register(args[0], args[1], age)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(user)

	case "PING":
		if err := client.Ping(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("PONG")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Veridian CLI - validation and normalization toolkit")
	fmt.Println("\nUsage:")
	fmt.Println("  veridian EMAIL <address>")
	fmt.Println("  veridian PASSWORD <candidate>")
	fmt.Println("  veridian NORMALIZE <json-array>")
	fmt.Println("  veridian REGISTER <name> <email> <age>")
	fmt.Println("  veridian PING")
	fmt.Println("\nEnvironment Variables:")
	fmt.Println("  VERIDIAN_ADDR         Address of a remote daemon (default: run in-process)")
	fmt.Println("  VERIDIAN_DISABLE_TLS  Set to true to disable TLS")
}

func printJSON(v any) {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(bytes))
}
