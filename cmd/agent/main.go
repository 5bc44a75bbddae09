package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"sessions-agent/internal/di"
	"sessions-agent/internal/domain/entity"
	"sessions-agent/internal/infrastructure/env"
)

const defaultTask = "what is the sum of 5 + 10? Please calculate it using python code."

func main() {
	envService := env.NewEnvService()

	task := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if task == "" {
		task = defaultTask
	}

	cfg := di.ConfigFromEnv(envService)
	cfg.TaskName = task
	cfg.WithAgent = true

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
	defer container.Close()

	container.Logger.Info("Task started", "task", task, "session", container.Sessions.SessionID())
	fmt.Println("\nAgent started...")

	result, err := container.TaskExecutor.Execute(ctx, task)
	if err != nil {
		container.Logger.Error("Task failed", "error", err)
		fmt.Printf("\nTask failed: %v\n", err)
		container.Close()
		os.Exit(1)
	}

	container.Logger.Info("Task completed", "iterations", result.Iterations, "steps", len(result.Steps))
	fmt.Println("\nINPUT:")
	fmt.Println(result.Input)
	container.Console.ShowFinalAnswer(result.FinalAnswer)

	if container.Evaluator == nil {
		return
	}
	verdict, err := container.Evaluator.Evaluate(ctx, entity.EvaluationCriteria{
		Task:   result.Input,
		Answer: result.FinalAnswer,
		Steps:  result.Steps,
	})
	if err != nil {
		container.Logger.Warn("Evaluation failed", "error", err)
		fmt.Printf("\nEvaluation failed: %v\n", err)
		return
	}
	container.Console.ShowEvaluation(verdict)
}
