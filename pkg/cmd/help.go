package cmd

// rootLong is the main application help
const rootLong = `pypisrc - PyPI Source Manager

A terminal UI for switching the package index pip installs from.

Interactive Mode:
  Run without any command to start the TUI where you can:
  - Pick one of the preset mirrors (arrows + enter, or 1-9)
  - Toggle between shell mode (pip config set) and conf mode
    (rewrite pip's config file) with tab
  - Back up the config with b, open it with o
  - Copy every preset as JSON to the clipboard with e

Logs:
  Errors go to pypisrc-running.log and every change is recorded in
  pypisrc-history.log, both under log_dir (default ../logs).

Project Repository: https://github.com/xlttj/pypisrc`

// rootExample shows common invocations
const rootExample = `  pypisrc                             Start interactive TUI
  pypisrc list                        Show the preset mirrors
  pypisrc use tsinghua                Switch via pip config set
  pypisrc use aliyun --mode conf      Switch by rewriting the config file
  pypisrc use https://my.mirror/simple
  pypisrc export --format yaml --stdout`
