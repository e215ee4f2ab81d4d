// Copyright 2024 The iwacore Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/iwa-go/iwacore/bytesio"
	"github.com/iwa-go/iwacore/discriminate"
	"github.com/iwa-go/iwacore/index"
	ilog "github.com/iwa-go/iwacore/internal/log"
	"github.com/iwa-go/iwacore/iwork"
)

var (
	wantAll    bool
	wantSlides bool
	wantShapes bool
	wantText   bool
	wantRaw    bool
	verbose    bool
)

func prettyPrint(buf []byte) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf, "", "\t"); err != nil {
		log.Println("JSON indent error:", err)
		return string(buf)
	}
	return pretty.String()
}

// openPackage adapts filePath to a bytesio.Package: a directory is
// opened as a DirPackage (an iWork document expanded on disk), and a
// file is tried first as a ZIP archive (the common case for a real
// .key/.numbers/.pages document) and, failing that, wrapped as an
// UnstructuredPackage so a bare .iwa fragment can still be probed.
func openPackage(filePath string) (bytesio.Package, func() error, error) {
	if fi, err := os.Stat(filePath); err == nil && fi.IsDir() {
		return bytesio.NewDirPackage(filePath), func() error { return nil }, nil
	}

	if pkg, closeFn, err := bytesio.OpenZipPackage(filePath); err == nil {
		return pkg, closeFn, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, err
	}
	return bytesio.NewUnstructuredPackage(data), func() error { return nil }, nil
}

func dumpFile(filePath string, logger *ilog.Helper) {
	log.Printf("Processing %s", filePath)

	pkg, closeFn, err := openPackage(filePath)
	if err != nil {
		log.Printf("error opening %s: %v", filePath, err)
		return
	}
	defer closeFn()

	result := discriminate.Classify(pkg)
	if result.Format != discriminate.FormatBinary {
		log.Printf("%s: not a binary IWA document (format=%v kind=%v confidence=%v)",
			filePath, result.Format, result.Kind, result.Confidence)
		return
	}

	idx, err := index.Open(result.Root, logger)
	if err != nil {
		log.Printf("%s: %v", filePath, err)
		return
	}

	if wantRaw {
		dumpRaw(idx)
		return
	}

	consumer := newDumpConsumer(wantSlides || wantAll, wantShapes || wantAll, wantText || wantAll)
	driver := iwork.NewDriver(idx, logger)
	if !driver.Parse(consumer) {
		log.Printf("%s: could not resolve document root", filePath)
		return
	}

	out, err := json.Marshal(consumer.root)
	if err != nil {
		log.Printf("%s: marshal error: %v", filePath, err)
		return
	}
	fmt.Println(prettyPrint(out))
}

// dumpRaw forces a full fragment scan and prints the resulting
// id->type map, bypassing the driver's graph walk entirely — useful
// for a document whose root object is itself damaged, where the
// walked dump (--slides/--shapes/--text) would come back empty.
func dumpRaw(idx *index.ObjectIndex) {
	idx.ScanAll()
	out, err := json.Marshal(idx.KnownObjects())
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	fmt.Println(prettyPrint(out))
}

func isDirectory(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}

func run(cmd *cobra.Command, args []string) {
	logger := ilog.Default()
	if verbose {
		logger = ilog.NewHelper(ilog.NewStdLogger(os.Stdout))
	}

	filePath := args[0]
	if !isDirectory(filePath) {
		dumpFile(filePath, logger)
		return
	}

	// A directory argument here means "walk it for document files",
	// distinct from DirPackage's "this directory IS one expanded
	// document" in openPackage — a document that is itself a
	// directory never nests another document inside it.
	entries, err := os.ReadDir(filePath)
	if err != nil {
		log.Printf("error reading %s: %v", filePath, err)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		dumpFile(filePath+string(os.PathSeparator)+e.Name(), logger)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "iwkdump",
		Short: "An Apple iWork (Keynote/Numbers/Pages) document reader",
		Long:  "iwkdump decodes the binary IWA container of modern iWork documents and dumps the resulting object graph",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("iwkdump 0.1.0")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump <file-or-dir>",
		Short: "Dumps the decoded object graph of an iWork document",
		Args:  cobra.ExactArgs(1),
		Run:   run,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug-level corruption notes")
	dumpCmd.Flags().BoolVarP(&wantSlides, "slides", "", false, "dump slide/layer structure")
	dumpCmd.Flags().BoolVarP(&wantShapes, "shapes", "", false, "dump shapes, groups, images, placeholders")
	dumpCmd.Flags().BoolVarP(&wantText, "text", "", false, "dump paragraph/span text runs")
	dumpCmd.Flags().BoolVarP(&wantRaw, "raw", "", false, "dump the raw object index instead of the walked graph")
	dumpCmd.Flags().BoolVarP(&wantAll, "all", "", false, "dump everything")

	rootCmd.AddCommand(versionCmd, dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
