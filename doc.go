// Package topology implements planar-geometry operations on orb geometries:
// boolean overlays (intersection, union, difference, symmetric difference),
// buffering, validity checking, distance, polygonization, line merging and
// sequencing, and precision reduction.
//
// All operations build an ephemeral planar graph whose edges are noded (split
// at every mutual intersection point) and labelled with the topological
// location (interior, boundary, exterior) relative to each input geometry.
// Rings of directed edges are then assembled into result polygons, lines and
// points. Floating-point non-robustness in the noding phase is handled by a
// deterministic retry ladder that snap-rounds the inputs to successively
// coarser precision grids.
package topology
