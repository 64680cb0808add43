package network_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/isochrone/network"
)

// ExampleShortestPaths settles a 5×5 grid from its centre with a cost cap.
func ExampleShortestPaths() {
	g, err := network.Grid(5, 5, 100, network.ConstantWeight(60), nil)
	if err != nil {
		fmt.Println(err)
		return
	}

	tree, err := network.ShortestPaths(context.Background(), g, network.GridID(2, 2), network.WithMaxCost(120))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("settled:", tree.Len())
	fmt.Println("corner:", tree.Cost(network.GridID(0, 0)) == network.Unreached)
	fmt.Println("path:", tree.Path(network.GridID(2, 4)))
	// Output:
	// settled: 13
	// corner: true
	// path: [2,2 2,3 2,4]
}
