package spkmeans_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/spkmeans"
	"github.com/hupe1980/spkmeans/matrix"
)

func ExampleRun() {
	// 4 documents over a 3 word vocabulary.
	input := `4 3 4
1 1 1
2 1 1
3 2 1
4 3 1
`
	m, err := matrix.Decode(strings.NewReader(input))
	if err != nil {
		panic(err)
	}

	res, err := spkmeans.Run(context.Background(), m, 2)
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Partitions, res.Iterations, res.Converged)
	// Output: [[0 1] [2 3]] 1 true
}
