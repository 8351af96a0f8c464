/*
Package plugin turns a parsed specification into an Objective-C class.

Each Plugin contributes to a Class: Init declares the properties and the
designated initializer and is always active, Copying adopts NSCopying,
Description prints every attribute, Equality implements isEqual: and hash.
A Registry resolves which plugins apply to a type from the project defaults
and the type's own includes(...) and excludes(...), then renders Name.h and
Name.m next to the input file.

	req, err := plugin.Builtin().Generate("models/Person.value", t, plugin.Config{})
*/
package plugin
