package main

import (
	"fmt"
	"os"

	"github.com/adrianliechti/aiphoto/pkg/operation"
	"github.com/adrianliechti/aiphoto/pkg/otel"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if err := otel.Setup("aiphoto", version); err != nil {
		errorf("%v", err)
		return 1
	}

	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "test":
		return runTest(args[1:])

	case "version":
		fmt.Println("aiphoto " + version)
		return 0

	case "help", "-h", "--help":
		printUsage()
		return 0

	default:
		return runOperation(args[0], args[1:])
	}
}

func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

func printUsage() {
	out := os.Stderr

	fmt.Fprintln(out, "aiphoto - generate and edit photos with hosted image models")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "usage:")
	fmt.Fprintln(out, "  aiphoto generate OUTPUT -p \"prompt\" [--aspect-ratio 16:9]")
	fmt.Fprintln(out, "  aiphoto edit INPUT OUTPUT -p \"prompt\" [--aspect-ratio 16:9]")
	fmt.Fprintln(out, "  aiphoto restore INPUT OUTPUT [-p \"prompt\"]")
	fmt.Fprintln(out, "  aiphoto style_transfer INPUT OUTPUT -p \"prompt\" [--style_ref_image IMAGE]")
	fmt.Fprintln(out, "  aiphoto compose OUTPUT --input_file1 IMAGE [--input_file2 IMAGE] [--input_file3 IMAGE] -p \"prompt\"")
	fmt.Fprintln(out, "  aiphoto add_text INPUT OUTPUT -p \"prompt\"")
	fmt.Fprintln(out, "  aiphoto sketch_to_image INPUT OUTPUT [-p \"prompt\"]")
	fmt.Fprintln(out, "  aiphoto test")
	fmt.Fprintln(out, "  aiphoto version")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "operations:")

	for _, name := range operation.Names() {
		op, _ := operation.Lookup(name)
		fmt.Fprintf(out, "  %-16s %s\n", op.Name, op.Description)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "flags:")
	fmt.Fprintln(out, "  -p, --prompt        text prompt")
	fmt.Fprintln(out, "      --aspect-ratio  output aspect ratio (e.g. 1:1, 16:9, 9:16)")
	fmt.Fprintln(out, "  -m, --model         renderer id from the config file")
	fmt.Fprintln(out, "  -c, --config        config file path (default: $AIPHOTO_CONFIG)")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "credentials: GEMINI_API_KEY, or GOOGLE_CLOUD_PROJECT with application-default login")
}
