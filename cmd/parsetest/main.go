package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"application-backend/internal/bootstrap"
	"application-backend/internal/shared/config"
)

func main() {
	resumePath := flag.String("resume", "", "Path to resume file (pdf, docx, doc or txt)")
	outPath := flag.String("out", "", "Path to write the response JSON (optional)")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall timeout")
	flag.Parse()

	if strings.TrimSpace(*resumePath) == "" {
		exitErr("resume path is required")
	}

	cfg, err := config.Load()
	if err != nil {
		exitErr(fmt.Sprintf("load config: %v", err))
	}

	data, err := os.ReadFile(*resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		exitErr(fmt.Sprintf("bootstrap: %v", err))
	}
	defer app.Close()

	resp, err := app.ResumeService.Parse(ctx, filepath.Base(*resumePath), data)
	if err != nil {
		exitErr(fmt.Sprintf("parse resume: %v", err))
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		exitErr(fmt.Sprintf("encode response: %v", err))
	}
	if *outPath != "" {
		if err := os.WriteFile(*outPath, out, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}
	fmt.Println(string(out))
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
