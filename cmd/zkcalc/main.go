// zkcalc is a calculator that proves its results: it evaluates a <op> b
// for <op> in {+, -, *} and verifies a zero-knowledge argument that the
// result is correct before printing it.
package main

func main() {
	Execute()
}
