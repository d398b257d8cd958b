package main

import (
	"fmt"
	"io"

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"

	"github.com/ovh/mysqlerr/category"
	"github.com/ovh/mysqlerr/db/dberrors"
)

func init() {
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(tableCmd)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Prints the error categories hierarchy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printYAML(cmd.OutOrStdout(), categoryTree(category.BaseError))
	},
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Prints the installed classification table",
	Long: "Display the error numbers which are explicitly classified, builtin and\n" +
		"configured ones. Other error numbers are classified by range.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printYAML(cmd.OutOrStdout(), dberrors.CurrentTable().Entries())
	},
}

type categoryNode struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Children    []*categoryNode `json:"children,omitempty"`
}

func categoryTree(c category.Category) *categoryNode {
	node := &categoryNode{
		Name:        c.String(),
		Description: c.Description(),
	}
	for _, child := range c.Children() {
		node.Children = append(node.Children, categoryTree(child))
	}
	return node
}

func printYAML(w io.Writer, v interface{}) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(out))
	return err
}
