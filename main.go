package main

import "github.com/agusnoopy3000/Carta-QR/cmd"

func main() {
	cmd.Execute()
}
