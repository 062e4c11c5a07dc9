// Package fuzztests houses Go fuzz harnesses for the tokenizers and the
// formatting engine. Its goal is to smoke test robustness: no panics, region
// trees that always reproduce the input, and stable output on a second pass.
//
// Назначение: прогонять произвольные байты через токенизаторы и движок.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/lexer, internal/dialect, internal/testkit.
package fuzztests
