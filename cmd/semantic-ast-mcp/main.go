package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/DeusData/semantic-ast-mcp/internal/store"
	"github.com/DeusData/semantic-ast-mcp/internal/tools"
	"github.com/DeusData/semantic-ast-mcp/internal/watcher"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Println("semantic-ast-mcp", version)
			os.Exit(0)
		case "update":
			os.Exit(runUpdate(os.Args[2:]))
		}
	}

	s, err := store.Open("semantic-ast")
	if err != nil {
		log.Fatalf("store open err=%v", err)
	}

	srv := tools.NewServer(s)

	ctx, cancel := context.WithCancel(context.Background())
	go watcher.New(s, srv.ReindexProject).Run(ctx)

	runErr := srv.MCPServer().Run(ctx, &mcp.StdioTransport{})
	cancel()
	s.Close()
	if runErr != nil {
		log.Fatalf("server err=%v", runErr)
	}
}
