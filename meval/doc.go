// Copyright 2014 Alexandre Tuleu
// This file is part of go-meval.
//
// go-meval is free software: you can redistribute it and/or modify it
// under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-meval is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public
// License along with go-meval.  If not, see
// <http://www.gnu.org/licenses/>.

/*
Package meval provides a mathematical expression parser. It can parse
mathematical expression into an AST and evaluate it with one value per
free variable.

Basics

An expression can be parsed using Compile, and evaluated with Eval. See
#Expression basic example.

Variables and constants

Identifiers are resolved at compile time against a Context: names found
in the Context are replaced by their value (Constants defines e, pi,
tau and phi), any other name becomes a free variable. Variables reports
them in order of first appearance, and Eval binds its arguments in that
same order.

Precision

Compile32 builds a float32 version of the same expression, for
consumers like audio output whose sample type is narrower. Both forms
report undefined operations (division by zero, logarithm of a negative
number, overflow...) as a *DomainError.

*/
package meval
