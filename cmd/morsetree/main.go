// Command morsetree grows Morse-code trees in a window, in a terminal, or
// headlessly to PNG and WAV files.
package main

func main() {
	Execute()
}
