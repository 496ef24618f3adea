// Command dailyquest is a terminal habit tracker that levels you up for
// finishing a small set of daily exercises.
package main

import "github.com/nathoo/dailyquest/cmd/dailyquest/root"

func main() {
	root.Execute()
}
