package main

import "gigcampus_backend/internal/app"

func main() {
	app.Run()
}
