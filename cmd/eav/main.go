// Command eav assembles typed entity-attribute-value objects from YAML
// manifests against a reference catalog.
package main

import "github.com/mesh-intelligence/eav/internal/cli"

func main() {
	cli.Execute()
}
