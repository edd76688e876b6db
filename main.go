////////////////////////////////////////////////////////////////////////////////
// Attack Game: a two-sided team contest for the vsc network
// Build with tinygo for wasm; the native build only serves the tests.
////////////////////////////////////////////////////////////////////////////////

package main

// main is left empty on purpose
func main() {

}
