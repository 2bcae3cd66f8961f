// Package tools defines tool contracts and implementations.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler; embedded
//     tools carry a provider type and a compatible-model list instead of a
//     local handler.
//   - Registry: the catalog advertised to the model, populated once at
//     startup and read-only afterwards.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - File tools: read_file, list_files (non-recursive), edit_file.
//   - run_code: sandboxed Python execution with artifact capture.
//   - web_fetch: HTTP scrape with CSS selection.
package tools
