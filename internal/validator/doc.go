// Package validator collects and reports the issues found when checking a
// generated capability table.
//
//   - [Severity]: distinguishes blocking errors from warnings and notes.
//   - [Issue]: a single problem, tied to a field (usually a capability name)
//     and optional context such as the entry index.
//   - [Result]: aggregates issues and answers whether any of them block.
//   - [Reporter]: renders a Result as colored text, JSON or YAML.
//
// Basic usage:
//
//	result := &validator.Result{}
//	if name == "" {
//		result.AddError("", "empty capability name", nil)
//	}
//	if result.HasErrors() {
//		// refuse the table
//	}
package validator
