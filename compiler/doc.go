/*

Process of compilation

Program Text ->
	scan (trie for keywords) ->
Tokens ->
	parse (precedence climbing) ->
Abstract Syntax Tree (ast) ->
	back (register allocation) ->
Assembly Text (amd64, GNU as) ->
	as, link with libc ->
Binary Executable

Language

	program = "{" stmt* "}" | stmt*
	stmt    = "print" expr ";" | expr ";"
	expr    = expr ("+" | "-" | "*" | "/") expr | "(" expr ")" | integer

Only 4 registers are used and nothing is spilled,
so expressions needing more live values fail to compile.

*/
package compiler
