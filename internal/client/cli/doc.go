// Package cli implements the interactive dog catalog client: a small REPL
// that registers, logs in, browses the catalog and edits entries through
// the HTTP API.
//
// Commands
//
//	help                 show available commands
//	register             create an account
//	login                authenticate and keep the session token
//	list | l [name]      list the catalog, or show the newest entry named name
//	show <id>            show a single entry
//	add                  create an entry (interactive)
//	edit <id>            replace an entry (interactive)
//	delete <id>          delete an entry
//	logout               forget the session token
//	exit | quit          leave the program
package cli
