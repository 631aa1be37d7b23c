// Command ast-dump prints the raw tree-sitter parse and the normalized
// node table for one source file. Development aid for authoring adapter
// tables: run it against a snippet to see which native kinds a grammar
// produces and what they map to.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/semantic-ast-mcp/internal/lang"
	"github.com/DeusData/semantic-ast-mcp/internal/normalize"
	"github.com/DeusData/semantic-ast-mcp/internal/parser"
	"github.com/DeusData/semantic-ast-mcp/internal/semtype"
)

func printAST(node *tree_sitter.Node, source []byte, indent int) {
	if node == nil {
		return
	}
	prefix := strings.Repeat("  ", indent)
	text := string(source[node.StartByte():node.EndByte()])
	if len(text) > 60 {
		text = text[:60] + "..."
	}
	fmt.Printf("%s%s %q\n", prefix, node.Kind(), text)
	for i := uint(0); i < node.ChildCount(); i++ {
		printAST(node.Child(i), source, indent+1)
	}
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: ast-dump <source-file>")
		os.Exit(2)
	}
	path := os.Args[1]

	l, ok := lang.LanguageForExtension(filepath.Ext(path))
	if !ok {
		log.Fatalf("unsupported extension: %s", filepath.Ext(path))
	}
	source, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read err=%v", err)
	}

	fmt.Printf("=== RAW TREE (%s) ===\n", l)
	tree, err := parser.Parse(l, source)
	if err != nil {
		log.Fatalf("parse err=%v", err)
	}
	printAST(tree.RootNode(), source, 0)
	tree.Close()

	fmt.Println("\n=== NODE TABLE ===")
	table, err := normalize.Normalize(source, l)
	if err != nil {
		log.Fatalf("normalize err=%v", err)
	}
	for _, n := range table.Nodes {
		name := ""
		if n.Name != "" {
			name = " name=" + n.Name
		}
		flags := ""
		if fn := n.Flags.Names(); len(fn) > 0 {
			flags = " flags=" + strings.Join(fn, "|")
		}
		fmt.Printf("%4d parent=%-4d depth=%-2d 0x%02X %-24s %s%s%s\n",
			n.ID, n.ParentID, n.Depth, uint8(n.Type), semtype.Name(n.Type), n.NativeType, name, flags)
	}
	for _, e := range table.Edges {
		fmt.Printf("edge %d -%s-> %d\n", e.Source, e.Kind, e.Target)
	}
}
