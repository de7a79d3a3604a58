// Package model defines the field definitions, schemas and persisted instance
// shapes shared by the merger, the renderers and the update pipeline.
//
// A Schema is an ordered list of partial field definitions. Merging a Schema
// with a saved Instance yields fully populated Field values; every property
// missing from both falls back to the table returned by Defaults. Instances
// keep the title as a bare string while every other field is stored as a
// {value, order} pair, which is the layout existing stored widgets use.
package model
