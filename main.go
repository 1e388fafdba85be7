/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/pius706975/poolseek-be/cmd"

func main() {
	cmd.Execute()
}
