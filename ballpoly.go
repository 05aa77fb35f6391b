/*
Package ballpoly is a library of rigorous polynomial arithmetic over complex balls.
Every coefficient is a midpoint-radius enclosure and every operation returns enclosures
that contain the exact result, which makes the library suitable for certified
evaluation, interpolation, power series expansion and root isolation.
*/
package ballpoly
