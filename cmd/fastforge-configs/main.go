// Command fastforge-configs writes the Fastforge packaging configs of PI Task Watch.
package main

import "github.com/oshokin/fastforge-configs/cmd/fastforge-configs/cmd"

func main() {
	cmd.Execute()
}
