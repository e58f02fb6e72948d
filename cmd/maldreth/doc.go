// Command maldreth is the CLI for the research data lifecycle explorer. It
// runs the web server, initializes and inspects the SQLite database, imports
// tools CSV exports, and provides terminal views of the stage/category/tool
// hierarchy.
package main
