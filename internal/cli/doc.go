// Package cli renders the benchmark's command-line surface: progress
// display, the comparison table, banners, file reports and shell
// completion.
//
// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on
// their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayProgress], [DisplayQuietResult].
//
//   - Print* functions write informational banners to an [io.Writer].
//     Examples: [PrintExecutionConfig], [PrintExecutionMode].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteReportToFile].
package cli
