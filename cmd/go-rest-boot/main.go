package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "go-rest-boot",
		Short: "A CLI for go-rest-boot annotation tooling",
	}

	routesCmd := &cobra.Command{
		Use:   "routes [dir...]",
		Short: "Scan source directories and print the discovered route table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			previews, err := RouteTable(args)
			if err != nil {
				return err
			}
			PrintRoutes(cmd.OutOrStdout(), previews)
			return nil
		},
	}

	var pkg, out string
	generateCmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "Emit Go declarations equivalent to the //rest: comments in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := Generate(args[0], pkg)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			return os.WriteFile(out, src, 0o644)
		},
	}
	generateCmd.Flags().StringVar(&pkg, "package", "controllers", "package name for the generated file")
	generateCmd.Flags().StringVarP(&out, "output", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(generateCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
