// cmd/siemensplc/main.go
package main

func main() {
	Execute()
}
