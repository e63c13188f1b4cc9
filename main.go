package main

import "chat-app-core/config"

func main() {
	config.RunServer()
}
