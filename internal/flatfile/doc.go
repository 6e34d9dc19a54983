// Package flatfile persists a registry as a single tagged CSV file.
//
// Every row carries the same superset of columns:
//
//	type,name,age,descriptor,extra1,extra2,email,phone,subjects
//
// Columns that do not apply to a row's variant are left empty. The type
// column names the variant (Person, EnrichedPerson, StaffPerson). Subjects
// are joined with ';' into one cell.
//
// Files written before the type column existed are still readable: rows with
// an empty or missing tag become an EnrichedPerson when extra1 or extra2 is
// set and a plain Person otherwise. A StaffPerson is never inferred, so the
// email, phone and subjects of an untagged row are dropped. Headers of the
// older Danish files (navn, alder, køn, skole, ...) are mapped onto the
// current column names.
package flatfile
