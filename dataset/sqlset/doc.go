/*
Package sqlset stores datasets on SQL databases and reads them back.

Records are stored on a single records table with an id column, a label
column and one column per attribute, named a0, a1 and so on. The SQL
dialect differences are hidden behind the Dialect interface, implemented
by the sqlite3adapter and pgadapter packages.
*/
package sqlset
