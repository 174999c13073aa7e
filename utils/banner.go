package utils

import (
	"fmt"
	"os"
)

const serviceName = "people-directory"

// PrintBanner writes a short startup banner to stdout before structured
// logging takes over.
func PrintBanner(port string) {
	fmt.Fprintf(os.Stdout, "%s listening on :%s\n", serviceName, port)
}
