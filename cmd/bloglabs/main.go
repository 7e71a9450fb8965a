// Command bloglabs runs the BlogLabs terminal blog.
package main

func main() {
	Execute()
}
