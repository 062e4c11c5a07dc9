// Package dialect maps files to dialects and dialect ids to formatters.
//
// Detection collects weighted hints (config fileTypes, the built-in
// extension table, go-enry, chroma filename globs) and lets the classifier
// pick the dominant id; "text" is the fallback. The Registry builds one
// format.Engine per dialect and serves as the lookup for embedded regions,
// so a markdown fence or an HTML <style> body is formatted by the engine of
// its own dialect.
package dialect
