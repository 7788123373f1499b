package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/AlexandrSher/danswer/internal/builder"
	"github.com/AlexandrSher/danswer/internal/config"
	"github.com/AlexandrSher/danswer/internal/entity"
	"github.com/AlexandrSher/danswer/internal/gateway/persona"
	pkglogger "github.com/AlexandrSher/danswer/internal/pkg/logger"
	pkghttp "github.com/AlexandrSher/danswer/pkg/http"
)

const usage = `Usage: personactl [-env <name>] <command> [flags]

Commands:
  create  -file <persona.json>                     create a persona (and its default prompt)
  update  -file <persona.json>                     update a persona (and its prompt)
  delete  -id <personaID>                          delete a persona
  preview -system <text> -task <text> [-no-retrieval]  preview the final prompt
`

func main() {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*envFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load configuration:", err)
		os.Exit(1)
	}
	if cfg.DanswerCfg.Url == "" {
		fmt.Fprintln(os.Stderr, "DANSWER_SERVICE_URL is not set")
		os.Exit(1)
	}

	logger, err := builder.SetupLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "setup logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	gateway := persona.NewConnector(cfg.DanswerCfg, logger)
	ctx := pkglogger.ToContext(context.Background(), logger)
	ctx = pkglogger.WithAction(ctx, args[0])

	switch args[0] {
	case "create":
		err = runCreate(ctx, gateway, args[1:])
	case "update":
		err = runUpdate(ctx, gateway, args[1:])
	case "delete":
		err = runDelete(ctx, gateway, args[1:])
	case "preview":
		err = runPreview(ctx, gateway, args[1:])
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runCreate(ctx context.Context, gateway *persona.Connector, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	file := fs.String("file", "", "path to a persona definition JSON file")
	fs.Parse(args)

	var req entity.PersonaCreationRequest
	if err := readJSONFile(*file, &req); err != nil {
		return err
	}

	result, err := gateway.CreatePersona(ctx, &req)
	printUpsertResult(result)
	return err
}

func runUpdate(ctx context.Context, gateway *persona.Connector, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	file := fs.String("file", "", "path to a persona update JSON file")
	fs.Parse(args)

	var req entity.PersonaUpdateRequest
	if err := readJSONFile(*file, &req); err != nil {
		return err
	}

	result, err := gateway.UpdatePersona(ctx, &req)
	printUpsertResult(result)
	return err
}

func runDelete(ctx context.Context, gateway *persona.Connector, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int("id", 0, "persona id to delete")
	fs.Parse(args)

	resp, err := gateway.DeletePersona(ctx, *id)
	if err != nil {
		return err
	}

	printResponse("persona", resp)
	return nil
}

func runPreview(ctx context.Context, gateway *persona.Connector, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	systemPrompt := fs.String("system", "", "system prompt text")
	taskPrompt := fs.String("task", "", "task prompt text")
	noRetrieval := fs.Bool("no-retrieval", false, "preview with retrieval disabled")
	fs.Parse(args)

	resp, err := gateway.BuildFinalPrompt(ctx, *systemPrompt, *taskPrompt, *noRetrieval)
	if err != nil {
		return err
	}
	if !resp.OK() {
		printResponse("prompt-explorer", resp)
		return nil
	}

	var tmpl entity.PromptTemplateResponse
	if err := resp.DecodeJSON(&tmpl); err != nil {
		return err
	}

	fmt.Println(tmpl.FinalPromptTemplate)
	return nil
}

func readJSONFile(path string, v any) error {
	if path == "" {
		return errors.New("-file is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

func printUpsertResult(result *persona.UpsertResult) {
	if result == nil {
		return
	}

	printResponse("prompt", result.Prompt)
	if result.Persona == nil {
		fmt.Println("persona: skipped (prompt step did not yield an id)")
		return
	}
	printResponse("persona", result.Persona)
}

func printResponse(name string, resp *pkghttp.Response) {
	fmt.Printf("%s: %s\n", name, resp.Status)
	if len(resp.Body) > 0 {
		fmt.Printf("%s\n", resp.Body)
	}
}
