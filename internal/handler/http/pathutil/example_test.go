package pathutil_test

import (
	"fmt"

	"ytldr/internal/handler/http/pathutil"
)

// ExampleNormalizePath shows routed paths keeping their label and
// everything else sharing one.
func ExampleNormalizePath() {
	fmt.Println(pathutil.NormalizePath("/summaries"))
	fmt.Println(pathutil.NormalizePath("/summaries/?trace=1"))
	fmt.Println(pathutil.NormalizePath("/wp-admin"))
	fmt.Println(pathutil.NormalizePath("/.git/config"))

	// Output:
	// /summaries
	// /summaries
	// /other
	// /other
}
