package constants_test

import (
	"fmt"

	"github.com/agentstation/bookshelf/pkg/constants"
)

// Example shows the accepted publication year range.
func Example() {
	fmt.Printf("years %d-%d\n", constants.MinYear, constants.MaxYear)
	// Output: years 1500-3000
}

// Example_catalogFile shows the default catalog file name.
func Example_catalogFile() {
	fmt.Println(constants.DefaultCatalogFile)
	// Output: books.json
}
