package main

import "category-services-backend/cmd"

func main() {
	cmd.Execute()
}
