package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/todolist/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "todolist",
		Short: "ToDoList web server",
		Long:  `ToDoList is a small multi-user to-do list web application with dated tasks and automatic overdue flagging.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
