// Package format is the region traversal engine.
//
// Назначение: обойти дерево регионов документа, прогнать Text/Comment через
// конвейер правил и собрать либо исправленный текст (format), либо список
// правок (lint).
// Не делает: токенизацию (internal/lexer), выбор диалекта (internal/dialect)
// и IO.
// Зависимости: internal/token, internal/rule, internal/toggle, internal/config.
//
// The walk threads a State (cursor + toggle state) through every node by
// value. Embedded regions are delegated to a sub-formatter looked up by id in
// a Registry and run with the same mode and config snapshot as the parent.
package format
