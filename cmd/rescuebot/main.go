// Command rescuebot loads disaster scenarios, judges which location to rescue
// and reports survival statistics per resident attribute.
package main

func main() {
	Execute()
}
