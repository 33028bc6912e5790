/*
Package ports defines the driven ports (interfaces) around the unification engine.

These interfaces decouple the drivers (CLI, HTTP, MCP) from where problems come from
and where solutions go, so the same runner works against files, Loam repositories,
Redis or SQLite.

# Key Interfaces

  - ProblemLoader: Lists and loads unification problems (e.g., from Loam, YAML or Memory).
  - SolutionStore: Persists solved problems.
  - Solver: Turns a problem into a solution; implemented by the runner.
*/
package ports
