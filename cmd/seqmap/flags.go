package main

import (
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/seqmap/seqmap/consts"
)

var (
	flagMapping      = kingpin.Flag("mapping", `path to mapping file e.g. "mappings.yaml"`).Required().ExistingFile()
	flagUpdatePeriod = kingpin.Flag("mapping-update-period", `how often to check the mapping file for updates`).Default("30s").Duration()

	cmdValidate = kingpin.Command("validate", "Load the mapping file and print the resulting schema.")

	cmdResolve       = kingpin.Command("resolve", "Resolve date expressions against a schema field.")
	flagResolveField = cmdResolve.Flag("field", `date field whose format and resolution apply, empty for defaults`).String()
	flagResolveNow   = cmdResolve.Flag("now", `anchor for "now", RFC 3339`).String()
	flagResolveUpper = cmdResolve.Flag("upper", "resolve as an inclusive upper bound").Bool()
	argResolveExprs  = cmdResolve.Arg("expr", `expressions e.g. "now-1d/d"`).Required().Strings()

	cmdEncode       = kingpin.Command("encode", "Encode date values into their index terms.")
	flagEncodeField = cmdEncode.Flag("field", `date field whose format and precision apply, empty for defaults`).String()
	argEncodeValues = cmdEncode.Arg("value", `values e.g. "2015-01-01" or a raw timestamp`).Required().Strings()

	cmdIndex             = kingpin.Command("index", "Index JSON documents from stdin, one per line, and print their terms.")
	flagIndexMaxSize     = cmdIndex.Flag("max-document-size", "documents larger than this are skipped").Default("512KiB").Bytes()
	flagIndexDrift       = cmdIndex.Flag("allowed-time-drift", "how far in the past a document time may lag").Default(consts.AllowedTimeDrift).Duration()
	flagIndexFutureDrift = cmdIndex.Flag("future-allowed-time-drift", "how far ahead a document time may run").Default(consts.FutureAllowedTimeDrift).Duration()
)
