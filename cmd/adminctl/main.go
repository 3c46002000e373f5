package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/avolkov/tourneyadmin/internal/adminctl"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: adminctl [-e endpoint] status | setup <username> | reset <admin-username> <username>")
	os.Exit(2)
}

func main() {
	endpoint := flag.String("e", "http://localhost:8080", "server endpoint")
	flag.Parse()

	app := adminctl.NewApp(*endpoint, os.Stdout)

	switch flag.Arg(0) {
	case "status":
		required, err := app.Status()
		if err != nil {
			log.Fatalf("%v", err)
		}
		if required {
			fmt.Println("setup required: no accounts exist yet")
		} else {
			fmt.Println("setup completed")
		}
	case "setup":
		username := flag.Arg(1)
		if username == "" {
			usage()
		}
		if err := app.Setup(username); err != nil {
			log.Fatalf("%v", err)
		}
	case "reset":
		adminUsername, username := flag.Arg(1), flag.Arg(2)
		if adminUsername == "" || username == "" {
			usage()
		}
		if err := app.Reset(adminUsername, username); err != nil {
			log.Fatalf("%v", err)
		}
	default:
		usage()
	}
}
