// Package constgen turns text files into C/C++ string constants.
//
// Every input file becomes one constant. The declarations artifact (a header)
// holds an extern declaration per constant:
//
//	#pragma once
//	extern const char* GREETING_TXT;
//
// The definitions artifact holds the bodies. Each input line is escaped and
// written as its own string literal; the compiler joins adjacent literals:
//
//	#include "consts.h"
//	const char* GREETING_TXT = 
//		"Hello \"world\"\n"
//		"Bye\n"
//		;
//
// Emit creates the output directory when it does not exist yet; apart from
// that and the two artifacts it changes nothing on disk.
//
// Constant names come from the file's base name, upper-cased, with every '.'
// replaced by '_'. Names are not checked for uniqueness.
package constgen
