/*
Package pantry is the interactive terminal front end of the recipe finder.

A Console reads one command per line and drives a session.Session:

	add <ingredient>   add an ingredient to the list
	rm <ingredient>    remove an ingredient
	list               show the current ingredients
	generate           fetch recipes for the current list
	show <n>           print recipe n in full
	help               list commands
	quit               leave

Failures are printed as notices; they never end the console.
*/
package pantry
