package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"sessions-agent/internal/di"
	"sessions-agent/internal/infrastructure/env"
	"sessions-agent/internal/usecase/coderun"
)

// Runs Python in the session pool without an agent. The code comes from the
// file named by the first argument ("-" reads stdin) or the built-in snippet.
// Further arguments are local files uploaded to /mnt/data before the run.
func main() {
	envService := env.NewEnvService()

	code, err := readCode(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to read code: %v", err)
	}

	cfg := di.ConfigFromEnv(envService)
	cfg.TaskName = "execute"

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
	defer container.Close()

	if len(os.Args) > 2 {
		files, err := container.CodeRunner.Upload(ctx, os.Args[2:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Upload failed: %v\n", err)
			container.Close()
			os.Exit(1)
		}
		for _, f := range files {
			fmt.Printf("Uploaded %s (%d bytes)\n", f.FullPath(), f.SizeInBytes)
		}
	}

	out, err := container.CodeRunner.Run(ctx, code)
	if err != nil {
		container.Logger.Error("Execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "Execution failed: %v\n", err)
		container.Close()
		os.Exit(1)
	}

	fmt.Println("Code Output: ", out)
}

func readCode(args []string) (string, error) {
	if len(args) == 0 {
		return coderun.DefaultSnippet, nil
	}

	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
