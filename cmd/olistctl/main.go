// Command olistctl imports, inspects and renders the Olist dashboard data
// from the command line.
package main

func main() {
	Execute()
}
