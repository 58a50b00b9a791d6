/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package main

import (
	"github.com/hance08/ledger/cmd"
	"github.com/hance08/ledger/migrations"
)

func main() {
	cmd.Execute(migrations.FS)
}
