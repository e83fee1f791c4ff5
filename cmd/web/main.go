package main

import "guestbook_backend/internal/app"

func main() {
	app.Run()
}
