// Package config loads autocorrect configuration and publishes it as an
// immutable Snapshot.
//
// A Snapshot holds the rule severities, text rules, file type overrides and
// the spellcheck dictionary together with the rule pipeline built for it.
// Provider swaps snapshots atomically: readers pin the snapshot that was
// current when they started and never see a partial update. A failed load
// leaves the previous snapshot in place.
//
// Two file formats are accepted, YAML (.autocorrectrc) and TOML
// (autocorrect.toml), with the same keys:
//
//	rules:
//	  space-word: 1        # 0/off, 1/error, 2/warning
//	  spellcheck: 2
//	textRules:
//	  "自动校正": 0         # lines containing the text are left alone
//	spellcheck:
//	  words:
//	    - iOS
//	    - wifi = Wi-Fi
//	fileTypes:
//	  "*.mdx": markdown
package config
